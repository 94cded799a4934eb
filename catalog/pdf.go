package catalog

import (
	"os"

	"rsc.io/pdf"
)

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (n int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errPDF.Fmt(path).Wrap(err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return 0, errPDF.Fmt(path).Wrap(err)
	}

	// rsc.io/pdf panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, errPDF.Fmt(path)
		}
	}()

	doc, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return 0, errPDF.Fmt(path).Wrap(err)
	}

	n = doc.NumPage()
	if n <= 0 {
		return 0, errPDF.Fmt(path)
	}

	return n, nil
}
