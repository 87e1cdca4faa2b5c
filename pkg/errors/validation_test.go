package errors

import "testing"

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  int
		wantErr bool
	}{
		{1, false}, {2, false}, {3, false},
		{0, true}, {4, true}, {-1, true},
	}
	for _, tt := range tests {
		if err := ValidateFormat(tt.format); (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%d) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateThreads(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{1, false}, {8, false}, {1024, false},
		{0, true}, {-1, true}, {1025, true},
	}
	for _, tt := range tests {
		if err := ValidateThreads(tt.n); (err != nil) != tt.wantErr {
			t.Errorf("ValidateThreads(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}

func TestValidateRunID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid uuid", "550e8400-e29b-41d4-a716-446655440000", false},
		{"empty", "", true},
		{"too long", string(make([]byte, 100)), true},
		{"path separator", "abc/def", true},
		{"backslash", "abc\\def", true},
		{"control char", "abc\x01def", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateRunID(tt.id); (err != nil) != tt.wantErr {
				t.Errorf("ValidateRunID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAlgorithm(t *testing.T) {
	if err := ValidateAlgorithm("dxd"); err != nil {
		t.Errorf("dxd should be valid: %v", err)
	}
	if err := ValidateAlgorithm("mdxd"); err != nil {
		t.Errorf("mdxd should be valid: %v", err)
	}
	if err := ValidateAlgorithm("bogus"); err == nil {
		t.Error("bogus algorithm should be rejected")
	}
}

func TestValidateDetector(t *testing.T) {
	if err := ValidateDetector("ett"); err != nil {
		t.Errorf("ett should be valid: %v", err)
	}
	if err := ValidateDetector("unionfind"); err != nil {
		t.Errorf("unionfind should be valid: %v", err)
	}
	if err := ValidateDetector("bogus"); err == nil {
		t.Error("bogus detector should be rejected")
	}
}
