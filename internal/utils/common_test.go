package utils

import (
	"bytes"
	"testing"
)

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0", "[0]"},
		{"#/0", "[0]"},
		{"/3/время отправления", "[3].время отправления"},
		{"/a~1b/c~0d", "a/b.c~d"},
		{"/items/2/name", "items[2].name"},
		{"/0/%D0%B2%D1%80%D0%B5%D0%BC%D1%8F%20%D0%BE%D1%82%D0%BF%D1%80%D0%B0%D0%B2%D0%BB%D0%B5%D0%BD%D0%B8%D1%8F", "[0].время отправления"},
		{"/1/%D0%BD%D0%BE%D0%BC%D0%B5%D1%80%20%D0%BF%D0%BE%D0%B5%D0%B7%D0%B4%D0%B0", "[1].номер поезда"},
		{"/bad%zz", "bad%zz"},
	}
	for _, tt := range tests {
		if got := JSONPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("JSONPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
		}
	}
}

func TestBoolFromString(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes ", "on", "y"} {
		if !BoolFromString(v) {
			t.Errorf("BoolFromString(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "0", "false", "no", "off", "maybe"} {
		if BoolFromString(v) {
			t.Errorf("BoolFromString(%q) = true, want false", v)
		}
	}
}

func TestIsTTYNonFile(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(bytes.Buffer) = true")
	}
	if IsInteractive(&buf) {
		t.Error("IsInteractive(bytes.Buffer) = true")
	}
}
