package auth

import "testing"

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !svc.Verify(hash, "correct horse battery staple") {
		t.Error("expected matching password to verify")
	}
	if svc.Verify(hash, "wrong password") {
		t.Error("expected mismatched password to fail")
	}
	if svc.Verify(nil, "anything") {
		t.Error("expected nil hash to fail, not panic")
	}
}

func TestPasswordServiceImpl_HashIsSalted(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.Hash("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Hash("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(first) == string(second) {
		t.Error("two hashes of the same password must differ")
	}
}
