package util

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
)

const maxEmployeeIDAttempts = 20

var ErrEmployeeIDExhausted = errors.New("could not allocate a unique employee id")

// GenerateEmployeeID draws "EMP" plus four digits until exists reports the
// code as free.
func GenerateEmployeeID(ctx context.Context, exists func(ctx context.Context, code string) (bool, error)) (string, error) {
	for i := 0; i < maxEmployeeIDAttempts; i++ {
		code := fmt.Sprintf("EMP%04d", 1000+rand.Intn(9000))
		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrEmployeeIDExhausted
}
