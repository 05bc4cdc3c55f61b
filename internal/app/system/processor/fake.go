package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Fake is an in-memory Processor for tests. Webhook payloads are JSON
// Notifications and the signature must equal Secret.
type Fake struct {
	Secret string

	mu       sync.Mutex
	seq      int
	outcomes map[string]Outcome
	Requests []IntentRequest
	Err      error
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{Secret: "whsec_fake", outcomes: make(map[string]Outcome)}
}

func (f *Fake) CreateIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	f.seq++
	ref := fmt.Sprintf("pi_fake_%d", f.seq)
	f.outcomes[ref] = OutcomePending
	f.Requests = append(f.Requests, req)
	return &Intent{Ref: ref, ClientSecret: ref + "_secret"}, nil
}

func (f *Fake) Lookup(_ context.Context, ref string) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.outcomes[ref]
	if !ok {
		return "", ErrUnknownIntent
	}
	return o, nil
}

// Settle sets the outcome Lookup will report for ref.
func (f *Fake) Settle(ref string, o Outcome) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes[ref] = o
}

func (f *Fake) ParseWebhook(payload []byte, signature string) (*Notification, error) {
	if signature != f.Secret {
		return nil, ErrInvalidSignature
	}
	var n Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, err
	}
	if n.Ref == "" {
		return nil, nil
	}
	return &n, nil
}
