package impl

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const inviteLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateInviteCode returns a code shaped "ABCD-1234": four uppercase
// letters, a dash and a number in [1000, 9999].
func GenerateInviteCode() (string, error) {
	buf := make([]byte, 0, 9)
	for i := 0; i < 4; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteLetters))))
		if err != nil {
			return "", err
		}
		buf = append(buf, inviteLetters[n.Int64()])
	}
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, 1000+n.Int64(), 10)
	return string(buf), nil
}
