package firebase

import (
	"testing"

	"firebase.google.com/go/v4/auth"
)

func TestIdentityFromToken(t *testing.T) {
	id := IdentityFromToken(&auth.Token{
		UID:    "uid-1",
		Claims: map[string]interface{}{"email": "a@example.com", "picture": "https://avatar.test/a.png"},
	})
	if id.FirebaseUID != "uid-1" || id.Email != "a@example.com" || id.Name != "" || id.Picture == "" {
		t.Fatalf("identity = %+v", id)
	}
}
