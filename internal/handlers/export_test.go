package handlers

var BindErrorMessage = bindErrorMessage
