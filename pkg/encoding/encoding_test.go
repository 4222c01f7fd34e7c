package encoding

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type mockReport struct {
	Tool  string `json:"tool" yaml:"tool"`
	Count int    `json:"count" yaml:"count"`
}

func newMockDecoder() *JSONWriterDecoder[mockReport] {
	return NewJSONWriterDecoder[mockReport]("Mock Report", func(r *mockReport) error {
		if r.Tool == "" {
			return fmt.Errorf("%w: missing tool", ErrFailedCheck)
		}
		return nil
	})
}

func TestJSONWriterDecoder(t *testing.T) {
	t.Log(newMockDecoder().FileType())

	testTable := []struct {
		label   string
		input   string
		wantErr error
	}{
		{label: "success", input: `{"tool": "TestTool", "count": 2}`, wantErr: nil},
		{label: "bad-json", input: "}}}", wantErr: ErrEncoding},
		{label: "failed-check", input: `{"count": 2}`, wantErr: ErrFailedCheck},
	}

	for _, testCase := range testTable {
		t.Run(testCase.label, func(t *testing.T) {
			decoder := newMockDecoder()
			_, err := decoder.DecodeFrom(strings.NewReader(testCase.input))
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("want: %v got: %v", testCase.wantErr, err)
			}
		})
	}
}

func TestJSONWriterDecoder_PreservesDocumentError(t *testing.T) {
	// Decoders double-wrap so the underlying document error stays matchable
	decoder := newMockDecoder()
	_, err := decoder.DecodeFrom(strings.NewReader(`[1, 2]`))
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("want: %v got: %v", ErrEncoding, err)
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("want wrapped *json.UnmarshalTypeError got: %v", err)
	}
}

func TestYAMLWriterDecoder(t *testing.T) {
	decoder := NewYAMLWriterDecoder[mockReport]("Mock Report", func(r *mockReport) error {
		if r.Tool == "" {
			return ErrFailedCheck
		}
		return nil
	})

	obj, err := decoder.DecodeFrom(strings.NewReader("tool: TestTool\ncount: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	report, ok := obj.(*mockReport)
	if !ok {
		t.Fatalf("got: %T", obj)
	}
	if report.Tool != "TestTool" || report.Count != 3 {
		t.Fatalf("got: %+v", report)
	}
}

func TestMapDecoder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		decoder := NewMapDecoder[mockReport]("Mock Config", "mock")
		_ = yaml.NewEncoder(decoder).Encode(map[string]any{
			"version": "1",
			"mock":    mockReport{Tool: "TestTool", Count: 5},
		})

		obj, err := decoder.Decode()
		if err != nil {
			t.Fatal(err)
		}
		report, ok := obj.(mockReport)
		if !ok {
			t.Fatalf("got: %T", obj)
		}
		if report.Count != 5 {
			t.Fatalf("want: 5 got: %d", report.Count)
		}
	})

	t.Run("missing-field", func(t *testing.T) {
		decoder := NewMapDecoder[mockReport]("Mock Config", "mock")
		_ = yaml.NewEncoder(decoder).Encode(map[string]any{"version": "1"})

		_, err := decoder.Decode()
		if !errors.Is(err, ErrEncoding) {
			t.Fatalf("want: %v got: %v", ErrEncoding, err)
		}
	})

	t.Run("field-name", func(t *testing.T) {
		decoder := NewMapDecoder[mockReport]("Mock Config", "mock")
		if decoder.FieldName() != "mock" {
			t.Fatalf("want: mock got: %s", decoder.FieldName())
		}
	})
}
