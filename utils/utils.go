package utils

import (
	"fmt"

	"github.com/takoeight0821/cdecl/internal/token"
	"gopkg.in/yaml.v3"
)

// ErrorAt attaches an input position to an error.
type ErrorAt struct {
	Where token.Pos
	Err   error
}

func (e ErrorAt) Error() string {
	return fmt.Sprintf("Line: %d, Position: %d: %s", e.Where.Line, e.Where.Column, e.Err.Error())
}

func (e ErrorAt) Unwrap() error {
	return e.Err
}

func At(where token.Pos, err error) error {
	return ErrorAt{Where: where, Err: err}
}

type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected string
	Error    string
}

func ReadTestData(s []byte) []TestData {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data
}
