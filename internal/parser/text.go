package parser

import "io"

// TextParser handles plain text files. Text is already valid Markdown, so
// the content is passed through.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Source{
		Title:    titleFromFilename(filename),
		Filename: filename,
		Markdown: string(data),
	}, nil
}
