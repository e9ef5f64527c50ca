package firebase

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Clients bundles the Firebase-backed clients the service depends on.
// Constructed once at startup and injected; there is no package-level app.
type Clients struct {
	Firestore *firestore.Client
	Messaging *messaging.Client
}

// NewClients initializes a Firebase app from the given credentials file and
// returns Firestore and Messaging clients derived from it.
func NewClients(ctx context.Context, credentialsFile string) (*Clients, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[Firebase] Clients initialized successfully")
	return &Clients{
		Firestore: fsClient,
		Messaging: msgClient,
	}, nil
}

// Close releases the underlying client connections.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
