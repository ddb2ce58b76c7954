package render

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCount returns the number of pages in a generated PDF file.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect pdf: %w", err)
	}
	return n, nil
}

// CheckPageCount returns a warning string when the PDF runs past one
// page, the hard limit for these resumes. An empty string means the
// document fits.
func CheckPageCount(path string) string {
	n, err := PageCount(path)
	if err != nil {
		return fmt.Sprintf("⚠ could not verify page count: %v", err)
	}
	if n > 1 {
		return fmt.Sprintf("⚠ PDF is %d pages — trim content to fit one page", n)
	}
	return ""
}
