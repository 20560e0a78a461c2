package secrets

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type recordedCall struct {
	name string
	args []string
}

func TestKeychainStore_Get(t *testing.T) {
	var calls []recordedCall
	store := newKeychainStoreWithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, recordedCall{name, args})
		return []byte("sk-ant-admin\n"), nil
	})

	value, err := store.Get(context.Background(), AnthropicAdminKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "sk-ant-admin" {
		t.Errorf("expected 'sk-ant-admin', got %q", value)
	}

	want := []string{"find-generic-password", "-s", "tokentotem.anthropic.admin", "-a", "anthropic_admin", "-w"}
	if len(calls) != 1 || calls[0].name != "security" || !reflect.DeepEqual(calls[0].args, want) {
		t.Errorf("unexpected command: %+v", calls)
	}
}

func TestKeychainStore_Get_NotFound(t *testing.T) {
	store := newKeychainStoreWithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 44: item not found")
	})

	_, err := store.Get(context.Background(), OpenAIAdminKey)
	if !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("expected ErrSecretNotFound, got %v", err)
	}
}

func TestKeychainStore_Set(t *testing.T) {
	var got []string
	store := newKeychainStoreWithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		got = args
		return nil, nil
	})

	if err := store.Set(context.Background(), OpenAIAdminKey, "sk-new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"add-generic-password", "-s", "tokentotem.openai.admin", "-a", "openai_admin", "-w", "sk-new", "-U"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected args %v, got %v", want, got)
	}
}
