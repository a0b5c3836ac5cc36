package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"User@Example.com", "user@example.com"},
		{"  padded@example.com ", "padded@example.com"},
		{"john.doe@gmail.com", "johndoe@gmail.com"},
		{"john.doe+trial2@gmail.com", "johndoe@gmail.com"},
		{"J.O.H.N@GoogleMail.com", "john@gmail.com"},
		{"john.doe+x@googlemail.com", "johndoe@gmail.com"},
		{"john.doe@outlook.com", "john.doe@outlook.com"},
		{"john+tag@outlook.com", "john+tag@outlook.com"},
		{"not-an-email", "not-an-email"},
		{"@gmail.com", "@gmail.com"},
		{"trailing@", "trailing@"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeEmail(c.in), "input %q", c.in)
	}
}

func TestNormalizeEmailVariantsCollide(t *testing.T) {
	variants := []string{
		"club.leader@gmail.com",
		"clubleader@gmail.com",
		"club.leader+again@gmail.com",
		"CLUB.LEADER@googlemail.com",
	}
	for _, v := range variants {
		assert.Equal(t, "clubleader@gmail.com", NormalizeEmail(v))
	}
}
