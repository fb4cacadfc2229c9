package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	if err := os.WriteFile(path, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		want     []string
	}{
		{"zero lines", 0, nil},
		{"negative", -3, nil},
		{"fewer than file", 4, all[6:]},
		{"exactly file length", 10, all},
		{"more than file", 50, all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(path, tt.maxLines)
			if err != nil {
				t.Fatalf("Tail: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tail = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTailMissingFile(t *testing.T) {
	got, err := Tail(filepath.Join(t.TempDir(), "absent.log"), 8)
	if err != nil {
		t.Fatalf("Tail returned error for missing file: %v", err)
	}
	if got != nil {
		t.Errorf("Tail = %v, want nil", got)
	}
}

func TestTailEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := Tail(path, 8)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Tail = %v, want empty", got)
	}
}
