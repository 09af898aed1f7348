// Package pdf renders shipping label documents.
package pdf

import "context"

// LabelItem is one product line printed on the label.
type LabelItem struct {
	Name     string
	Quantity int
}

// LabelData carries everything printed on a shipping label.
type LabelData struct {
	RecipientName   string
	AddressLines    []string
	Carrier         string
	Platform        string
	PlatformOrderID string
	TrackingCode    string
	Items           []LabelItem
}

// Provider renders a label document for the given page format ("10x15" or "A4").
type Provider interface {
	GenerateLabel(ctx context.Context, format string, data LabelData) ([]byte, error)
}

// NoOpProvider renders nothing. Used by tests and environments without a
// rendering pipeline.
type NoOpProvider struct{}

func (p *NoOpProvider) GenerateLabel(ctx context.Context, format string, data LabelData) ([]byte, error) {
	return nil, nil
}
