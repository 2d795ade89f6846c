package handlers

import (
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// SupabaseSigner issues time-limited download URLs for rendered assets
// stored in a Supabase bucket.
type SupabaseSigner struct {
	Client    *supa.Client
	Bucket    string
	ExpirySec int
}

func (s *SupabaseSigner) SignedDownloadURL(path string) (string, error) {
	resp, err := s.Client.Storage.CreateSignedUrl(s.Bucket, path, s.ExpirySec)
	if err != nil {
		return "", fmt.Errorf("failed to sign url for %s: %w", path, err)
	}
	return resp.SignedURL, nil
}
