package distributed

import (
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/coredds/enigma-breaker/pkg/expander"
	"github.com/coredds/enigma-breaker/pkg/search"
)

func TestMasterClientRoundTrip(t *testing.T) {
	cfgs, err := expander.Expand("? Beta-Gamma-V 4-2-14 M-J-M KI-XN-FL")
	if err != nil {
		t.Fatal(err)
	}
	const ciphertext = "DMEXBMKYCVPNQBEDHXVPZGKMTFFBJRPJTLHLCHOTKOYXGGHZ"
	const crib = "SECRETS"

	trials, err := search.BuildTrials(ciphertext, crib, cfgs)
	if err != nil {
		t.Fatal(err)
	}

	log := zerolog.New(io.Discard)
	master := NewMaster("s3cret", ciphertext, crib, trials, 10, log)
	addr, err := master.Listen(":0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	client, err := Connect(addr, "s3cret", 10, log)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer client.Close()

	clientMatches, err := client.Run(2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	masterMatches, err := master.Wait()
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if len(masterMatches) == 0 {
		t.Fatal("expected at least one match from the known scenario 3 template")
	}
	if len(clientMatches) != len(masterMatches) {
		t.Fatalf("client collected %d matches locally, master aggregated %d", len(clientMatches), len(masterMatches))
	}
}

func TestConnectRejectsBadSecret(t *testing.T) {
	log := zerolog.New(io.Discard)
	master := NewMaster("correct-secret", "CIPHERTEXT", "CRIB", nil, 10, log)
	addr, err := master.Listen(":0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	_, err = Connect(addr, "wrong-secret", 1, log)
	if err == nil {
		t.Fatal("expected authentication failure with wrong secret")
	}
}

func TestConnectGivesUpWhenMasterNeverAppears(t *testing.T) {
	log := zerolog.New(io.Discard)
	master := NewMaster("s3cret", "CIPHERTEXT", "CRIB", nil, 10, log)
	addr, err := master.Listen(":0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	master.listener.Close() // force the first dial attempt to fail

	done := make(chan error, 1)
	go func() {
		_, err := Connect(addr, "s3cret", 5, log)
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected an error since the master never re-listens on this address")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Connect did not give up within its retry budget")
	}
}
