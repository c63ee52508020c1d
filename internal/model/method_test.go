package model

import "testing"

// TestParseMethod tests method string validation.
func TestParseMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Method
		wantErr bool
	}{
		{name: "json", input: "json", want: MethodJSON},
		{name: "json_svg", input: "json_svg", want: MethodJSONSVG},
		{name: "unknown value", input: "yaml", wantErr: true},
		{name: "empty value", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMethod(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMethod(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestMethodString tests the wire representation.
func TestMethodString(t *testing.T) {
	t.Parallel()

	if MethodJSON.String() != "json" {
		t.Errorf("MethodJSON.String() = %q", MethodJSON.String())
	}
	if MethodJSONSVG.String() != "json_svg" {
		t.Errorf("MethodJSONSVG.String() = %q", MethodJSONSVG.String())
	}
}
