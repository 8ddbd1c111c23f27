package auth

import (
	"testing"
	"time"

	"github.com/shulehub/shule/core"
)

func testCodec(ttl time.Duration) *Codec {
	conf := &core.Config{AppName: "Shule", SecretKey: "secret"}
	conf.Server.JWTExpirationDelta = ttl
	return NewCodec(conf)
}

func TestCodec_EncodeDecode(t *testing.T) {
	codec := testCodec(24 * time.Hour)

	claims := codec.NewClaims("s1", "Asha Odhiambo", "STUDENT", 12, "FEMALE")
	token, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	got, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if got != claims {
		t.Errorf("Decode() = %+v, want %+v", got, claims)
	}
	if got.UserID() != "s1" {
		t.Errorf("UserID() = %v, want s1", got.UserID())
	}
	if got.IsAdmin() {
		t.Error("IsAdmin() = true for STUDENT claims")
	}
}

func TestCodec_Decode(t *testing.T) {
	codec := testCodec(24 * time.Hour)
	otherCodec := testCodec(24 * time.Hour)
	otherCodec.secret = []byte("not-the-secret")

	validToken, err := codec.Encode(codec.NewClaims("t1", "Neema Juma", "TEACHER", 34, "FEMALE"))
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	// generate an expired token (valid signature)
	NowFunc = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expiredToken, err := codec.Encode(codec.NewClaims("t1", "Neema Juma", "TEACHER", 34, "FEMALE"))
	NowFunc = time.Now // reset
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	// flip one byte of the valid token's payload
	tampered := []byte(validToken)
	tampered[len(tampered)/2] ^= 0x01

	foreignToken, err := otherCodec.Encode(otherCodec.NewClaims("a1", "Eve", "ADMIN", 40, "FEMALE"))
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "no token", wantErr: ErrInvalidToken},
		{name: "garbage", token: "lmaooolol", wantErr: ErrInvalidToken},
		{name: "tampered byte", token: string(tampered), wantErr: ErrInvalidToken},
		{name: "wrong secret", token: foreignToken, wantErr: ErrInvalidToken},
		{name: "expired token", token: expiredToken, wantErr: ErrTokenExpired},
		{name: "valid token", token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Decode(tt.token); err != tt.wantErr {
				t.Errorf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
