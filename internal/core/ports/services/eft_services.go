package services

import "context"

// EFTSvcFacade allocates EFT numbers
type EFTSvcFacade interface {
	// NextEFTNumber returns a new "EFT<n>" reference.
	NextEFTNumber(ctx context.Context) (string, error)
}
