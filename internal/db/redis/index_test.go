package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/mediasense/internal/db"
)

func instructionIndex(t *testing.T) *db.IndexDefinition {
	t.Helper()
	def, err := db.NewIndex("mediasense:instruction:idx", "mediasense:instruction:").
		Text("$.technology", "technology").
		Text("$.instruction", "instruction").
		Build()
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	return def
}

func TestCreateIndex_SendsSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.CREATE", "mediasense:instruction:idx", "ON", "JSON",
			"PREFIX", "1", "mediasense:instruction:", "SCHEMA",
			"$.technology", "AS", "technology", "TEXT",
			"$.instruction", "AS", "instruction", "TEXT",
		)).
		Return(mock.Result(mock.RedisString("OK")))

	if err := NewStoreForTest(c).CreateIndex(context.Background(), instructionIndex(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateIndex_Errors(t *testing.T) {
	tests := []struct {
		name  string
		reply error
		check func(error) bool
	}{
		{"exists", mock.Result(mock.RedisError("Index already exists")).Error(), func(err error) bool {
			return errors.Is(err, db.ErrIndexExists)
		}},
		{"transport", context.DeadlineExceeded, func(err error) bool {
			return isDBError(err, db.OpCreateIndex)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c := mock.NewClient(ctrl)
			c.EXPECT().Do(gomock.Any(), gomock.Any()).Return(mock.ErrorResult(tc.reply))

			if err := NewStoreForTest(c).CreateIndex(context.Background(), instructionIndex(t)); !tc.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

func TestCreateIndex_InvalidDefinitionNotSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	err := NewStoreForTest(c).CreateIndex(context.Background(), &db.IndexDefinition{Name: "idx"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}
