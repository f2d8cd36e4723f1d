package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncodeOffsetToken creates an opaque page token for offset/limit listings.
func EncodeOffsetToken(offset, limit int) string {
	return EncodeMultiFieldToken(strconv.Itoa(offset), strconv.Itoa(limit))
}

// DecodeOffsetToken parses a token produced by EncodeOffsetToken.
func DecodeOffsetToken(token string) (offset int, limit int, err error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, 0, err
	}
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid pagination token format (split)")
	}
	offset, err = strconv.Atoi(parts[0])
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid pagination token format (offset)")
	}
	limit, err = strconv.Atoi(parts[1])
	if err != nil || limit <= 0 {
		return 0, 0, fmt.Errorf("invalid pagination token format (limit)")
	}
	return offset, limit, nil
}

// NextOffsetToken returns the token for the page after the one at offset, or "" on the last page.
func NextOffsetToken(offset, limit, total int) string {
	if limit <= 0 || offset+limit >= total {
		return ""
	}
	return EncodeOffsetToken(offset+limit, limit)
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
