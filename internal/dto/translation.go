package dto

// TranslateRequest asks for free text to be translated into the target
// language. Source defaults to auto-detection when empty.
type TranslateRequest struct {
	Text       string `json:"text" validate:"required"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang" validate:"required"`
}

// TranslateResponse returns the translated text.
type TranslateResponse struct {
	Translated string `json:"translated"`
}

// UploadResponse returns the stored path of an uploaded file.
type UploadResponse struct {
	FilePath string `json:"filePath"`
}

// DownloadExerciseRequest carries the exercise content to package as a file.
type DownloadExerciseRequest struct {
	Content string `json:"content" validate:"required"`
}
