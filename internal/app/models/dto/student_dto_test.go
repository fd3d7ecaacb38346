package dto

import (
	"encoding/json"
	"testing"
)

func TestFlexIntUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{
			name:  "json number",
			input: `20`,
			want:  20,
		},
		{
			name:  "numeric string",
			input: `"20"`,
			want:  20,
		},
		{
			name:  "numeric string with spaces",
			input: `" 7 "`,
			want:  7,
		},
		{
			name:  "negative number",
			input: `-3`,
			want:  -3,
		},
		{
			name:    "non-numeric string",
			input:   `"abc"`,
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   `""`,
			wantErr: true,
		},
		{
			name:    "float",
			input:   `2.5`,
			wantErr: true,
		},
		{
			name:    "null",
			input:   `null`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexInt
			err := json.Unmarshal([]byte(tt.input), &f)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if f.Int() != tt.want {
				t.Fatalf("Unmarshal(%s) = %d, want %d", tt.input, f.Int(), tt.want)
			}
		})
	}
}

func TestStudentRequestMissingFieldsStayNil(t *testing.T) {
	var req StudentRequest
	if err := json.Unmarshal([]byte(`{"name":"Bo","course":"CS"}`), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if req.Age != nil || req.Year != nil {
		t.Fatalf("absent numeric fields should stay nil, got age=%v year=%v", req.Age, req.Year)
	}
}
