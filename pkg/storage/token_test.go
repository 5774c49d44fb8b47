package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDownloadSignerRoundTrip(t *testing.T) {
	signer := NewDownloadSigner("secret", time.Hour)

	token, expiresAt, err := signer.Sign("timetable_3_2026-27.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	name, err := signer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "timetable_3_2026-27.csv", name)
}

func TestDownloadSignerRejectsExpired(t *testing.T) {
	signer := NewDownloadSigner("secret", time.Hour)
	signer.ttl = -time.Minute

	token, _, err := signer.Sign("snapshot.csv")
	require.NoError(t, err)

	_, err = signer.Verify(token)
	require.ErrorContains(t, err, "expired")
}

func TestDownloadSignerRejectsTampering(t *testing.T) {
	signer := NewDownloadSigner("secret", time.Hour)

	token, _, err := signer.Sign("snapshot.csv")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[1] = "9999999999"
	_, err = signer.Verify(strings.Join(parts, "."))
	require.ErrorContains(t, err, "signature")

	_, err = NewDownloadSigner("other", time.Hour).Verify(token)
	require.ErrorContains(t, err, "signature")
}
