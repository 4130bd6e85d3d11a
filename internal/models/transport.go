package models

type ErrorResp struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string `json:"message"`
}

func NewErrorResp(message string) ErrorResp {
	return ErrorResp{Error: ErrorBody{Message: message}}
}
