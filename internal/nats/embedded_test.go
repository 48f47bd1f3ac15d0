package nats

import (
	"context"
	"testing"
	"time"
)

func TestEmbeddedServerPublish(t *testing.T) {
	srv, err := StartEmbedded(EmbeddedConfig{
		StoreDir: t.TempDir(),
		Port:     -1, // random port
	})
	if err != nil {
		t.Fatalf("start embedded server: %v", err)
	}
	defer srv.Shutdown()

	client, err := Connect(srv.ClientURL())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.EnsureStream(ctx); err != nil {
		t.Fatalf("ensure stream: %v", err)
	}

	pub := NewPublisher(client.JetStream())
	err = pub.Publish(ctx, "projects.created", map[string]string{"project_id": "p1"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	stream, err := client.JetStream().Stream(ctx, StreamName)
	if err != nil {
		t.Fatalf("get stream: %v", err)
	}
	info, err := stream.Info(ctx)
	if err != nil {
		t.Fatalf("stream info: %v", err)
	}
	if info.State.Msgs != 1 {
		t.Fatalf("expected 1 message in stream, got %d", info.State.Msgs)
	}
}
