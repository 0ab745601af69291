package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrRecordNotFound = ErrorResponse{
		Status:  "error",
		Error:   "record_not_found",
		Details: "Record with this id does not exist",
	}

	ErrMainImageRequired = ErrorResponse{
		Status:  "error",
		Error:   "main_image_required",
		Details: "Main image is required",
	}

	ErrAIUnavailable = ErrorResponse{
		Status:  "error",
		Error:   "ai_unavailable",
		Details: "AI service is temporarily unavailable",
	}

	ErrFileTooLarge = ErrorResponse{
		Status:  "error",
		Error:   "file_too_large",
		Details: "File size exceeds limit",
	}

	ErrInvalidFileType = ErrorResponse{
		Status:  "error",
		Error:   "invalid_file_type",
		Details: "Only image files are accepted",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Internal server error",
	}
)
