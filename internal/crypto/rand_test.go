package crypto

import (
	"encoding/base64"
	"testing"
)

func TestGenerateSecureToken(t *testing.T) {
	first, err := GenerateSecureToken()
	if err != nil {
		t.Fatalf("%+v", err)
	}

	second, err := GenerateSecureToken()
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if first == second {
		t.Errorf("expected distinct tokens, got '%s' twice", first)
	}

	decoded, err := base64.RawURLEncoding.DecodeString(first)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if e, g := TokenSize, len(decoded); e != g {
		t.Errorf("len(decoded): expected %v, got %v", e, g)
	}
}
