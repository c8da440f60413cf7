package auth_test

import (
	"strings"
	"testing"

	"github.com/javohir-a/kutubxona/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordPolicy(t *testing.T) {
	t.Parallel()

	policy := auth.NewPasswordPolicy(8)

	tests := []struct {
		name     string
		password string
		username string
		email    string
		wantMsg  string // substring of an expected problem, empty means valid
	}{
		{
			name:     "strong password",
			password: "G'alati-Qulf_2020",
			username: "javohir",
			email:    "javohir@gmail.com",
		},
		{
			name:     "too short",
			password: "Ab1!x",
			username: "javohir",
			email:    "javohir@gmail.com",
			wantMsg:  "too short",
		},
		{
			name:     "entirely numeric",
			password: "84710394857",
			username: "javohir",
			email:    "javohir@gmail.com",
			wantMsg:  "entirely numeric",
		},
		{
			name:     "common password",
			password: "qwertyuiop",
			username: "javohir",
			email:    "javohir@gmail.com",
			wantMsg:  "too common",
		},
		{
			name:     "contains username",
			password: "javohir2020!",
			username: "javohir",
			email:    "javohir@gmail.com",
			wantMsg:  "too similar",
		},
		{
			name:     "contains email local part",
			password: "xx-bek.dev-xx",
			username: "boshqa",
			email:    "bek.dev@gmail.com",
			wantMsg:  "too similar",
		},
		{
			name:     "username contains password",
			password: "javo",
			username: "javohirbek",
			email:    "j@gmail.com",
			wantMsg:  "too similar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := policy.Validate(tt.password, tt.username, tt.email)
			if tt.wantMsg == "" {
				assert.Empty(t, problems)
				return
			}
			require.NotEmpty(t, problems)
			found := false
			for _, p := range problems {
				if strings.Contains(strings.ToLower(p), strings.ToLower(tt.wantMsg)) {
					found = true
				}
			}
			assert.True(t, found, "expected a problem mentioning %q, got %v", tt.wantMsg, problems)
		})
	}
}

func TestPasswordPolicyAccumulatesProblems(t *testing.T) {
	t.Parallel()

	policy := auth.NewPasswordPolicy(8)
	problems := policy.Validate("123456", "javohir", "javohir@gmail.com")
	// Short, common and numeric at once.
	assert.Len(t, problems, 3)
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := auth.NewBcryptHasher(4) // low cost to keep the test fast

	hash, err := hasher.Hash("juda-mahfiy-parol")
	require.NoError(t, err)
	require.NotEqual(t, "juda-mahfiy-parol", hash)

	assert.NoError(t, hasher.Compare(hash, "juda-mahfiy-parol"))
	assert.Error(t, hasher.Compare(hash, "boshqa-parol"))
}
