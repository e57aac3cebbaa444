package main

import (
	"fmt"
	"io"

	"github.com/san-kum/railsim/internal/export"
)

type outputFlags struct {
	plot     bool
	csvPath  string
	jsonPath string
	svgPath  string
	phase    bool
}

func writeTo(path string, write func(w io.Writer) error) error {
	if path == "" {
		return nil
	}
	w, err := export.Create(path)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Close()
}
