package storage

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// TokenDelimiter separates the encoded continuation tokens of a stack.
const TokenDelimiter = "::"

// DecodeTokenStack splits an encoded stack into continuation tokens, oldest first.
func DecodeTokenStack(encoded string) ([]string, error) {
	var tokens []string
	for _, part := range strings.Split(encoded, TokenDelimiter) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(part, "="))
		if err != nil {
			return nil, fmt.Errorf("invalid token stack: %w", err)
		}
		tokens = append(tokens, string(raw))
	}
	return tokens, nil
}

// EncodeTokenStack is the inverse of DecodeTokenStack. Empty tokens are dropped.
func EncodeTokenStack(tokens []string) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		parts = append(parts, encodeToken(t))
	}
	return strings.Join(parts, TokenDelimiter)
}

// AppendToken pushes token onto an encoded stack.
func AppendToken(stack, token string) string {
	if token == "" {
		return stack
	}
	if stack == "" {
		return encodeToken(token)
	}
	return stack + TokenDelimiter + encodeToken(token)
}

// DropLastToken pops the newest token. A stack of one token becomes empty.
func DropLastToken(stack string) string {
	i := strings.LastIndex(stack, TokenDelimiter)
	if i < 0 {
		return ""
	}
	return stack[:i]
}

func encodeToken(t string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(t))
}
