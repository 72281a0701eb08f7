package dto

import "io"

// PageRequest - номер и размер страницы из query-параметров
type PageRequest struct {
	Page     int
	PageSize int
}

// FileUpload - загруженный файл, отвязанный от multipart
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type MessageResponse struct {
	Message string `json:"message"`
}
