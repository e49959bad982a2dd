package ndjsonv

// Summary condenses a BatchResult into counters.
type Summary struct {
	TotalFiles      int `json:"total_files"`
	FilesWithErrors int `json:"files_with_errors"`
	FailedFiles     int `json:"failed_files"`
	TotalErrors     int `json:"total_errors"`
	TotalLines      int `json:"total_lines"`
	ValidLines      int `json:"valid_lines"`
	SkippedLines    int `json:"skipped_lines"`
}

// Summarize counts files, lines and errors in res.
func Summarize(res *BatchResult) Summary {
	var s Summary
	if res == nil {
		return s
	}
	s.TotalFiles = len(res.Files)
	s.FailedFiles = len(res.Failures)
	s.TotalErrors = len(res.Errors)
	for _, f := range res.Files {
		s.TotalLines += f.Lines
		s.ValidLines += f.Valid
		s.SkippedLines += f.Skipped
		if len(f.Errors) > 0 {
			s.FilesWithErrors++
		}
	}
	return s
}

// OK reports whether every line of every file was valid and no file failed.
func (s Summary) OK() bool { return s.TotalErrors == 0 && s.FailedFiles == 0 }
