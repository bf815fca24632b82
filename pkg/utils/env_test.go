package utils

import "testing"

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("ZLKDEX_TEST_STR", "value")
	if got := EnvOrDefault("ZLKDEX_TEST_STR", "fallback"); got != "value" {
		t.Fatalf("got %q, want %q", got, "value")
	}
	if got := EnvOrDefault("ZLKDEX_TEST_STR_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("got %q, want %q", got, "fallback")
	}
}

func TestEnvOrDefaultInt(t *testing.T) {
	t.Setenv("ZLKDEX_TEST_INT", "42")
	if got := EnvOrDefaultInt("ZLKDEX_TEST_INT", 0); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	if got := EnvOrDefaultInt("ZLKDEX_TEST_INT_UNSET", 7); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestEnvOrDefaultUint64(t *testing.T) {
	t.Setenv("ZLKDEX_TEST_UINT", "9999999999")
	t.Setenv("ZLKDEX_TEST_UINT_BAD", "not-a-number")
	if got := EnvOrDefaultUint64("ZLKDEX_TEST_UINT", 0); got != 9999999999 {
		t.Fatalf("got %d, want 9999999999", got)
	}
	if got := EnvOrDefaultUint64("ZLKDEX_TEST_UINT_BAD", 3); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}
