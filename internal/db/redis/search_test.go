package redis

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/mediasense/internal/db"
)

func TestSearchKNN(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return len(cmd) == 13 &&
				cmd[0] == "FT.SEARCH" &&
				cmd[1] == "mediasense:media:idx" &&
				cmd[2] == "*=>[KNN 3 @vector $BLOB]" &&
				cmd[3] == "RETURN" && cmd[4] == "2" && cmd[5] == "$" && cmd[6] == db.ScoreField &&
				cmd[7] == "PARAMS" && cmd[9] == "BLOB" && len(cmd[10]) == 8 &&
				cmd[11] == "DIALECT" && cmd[12] == "2"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(2),
			mock.RedisString("mediasense:media:cat"),
			mock.RedisArray(
				mock.RedisString(db.ScoreField), mock.RedisString("0.25"),
				mock.RedisString("$"), mock.RedisString(`{"id":"cat"}`),
			),
			mock.RedisString("mediasense:media:far"),
			mock.RedisArray(mock.RedisString(db.ScoreField), mock.RedisString("1.6")),
		)))

	res, err := NewStoreForTest(c).SearchKNN(context.Background(), &db.KNNQuery{
		Index:  "mediasense:media:idx",
		Field:  "vector",
		Vector: []float32{1, 0},
		K:      3,
		Return: []string{"$", db.ScoreField},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 || len(res.Entries) != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	cat := res.Entries[0]
	if math.Abs(cat.Score-0.75) > 1e-9 {
		t.Errorf("score = %f, want 0.75", cat.Score)
	}
	if cat.Fields["$"] != `{"id":"cat"}` {
		t.Errorf("unexpected document %q", cat.Fields["$"])
	}
	if _, ok := cat.Fields[db.ScoreField]; ok {
		t.Error("distance field must be stripped")
	}
	if res.Entries[1].Score != 0 {
		t.Errorf("opposite vectors must floor at 0, got %f", res.Entries[1].Score)
	}
}

func TestSearchKNN_InvalidQueryNotSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	if _, err := NewStoreForTest(c).SearchKNN(context.Background(), &db.KNNQuery{Index: "idx"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSearchKNN_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	c.EXPECT().Do(gomock.Any(), gomock.Any()).Return(mock.ErrorResult(context.DeadlineExceeded))

	_, err := NewStoreForTest(c).SearchKNN(context.Background(), &db.KNNQuery{
		Index: "idx", Field: "vector", Vector: []float32{1}, K: 1,
	})
	if !isDBError(err, db.OpSearch) {
		t.Fatalf("expected FT.SEARCH db.Error, got %v", err)
	}
}

func TestSearchText(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.SEARCH", "mediasense:instruction:idx", `(error handling \(go\))`,
			"RETURN", "1", "$", "WITHSCORES", "LIMIT", "0", "5", "DIALECT", "2",
		)).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(1),
			mock.RedisString("mediasense:instruction:1"),
			mock.RedisString("2.5"),
			mock.RedisArray(mock.RedisString("$"), mock.RedisString(`{"technology":"Go"}`)),
		)))

	res, err := NewStoreForTest(c).SearchText(context.Background(), &db.TextQuery{
		Index:  "mediasense:instruction:idx",
		Query:  "error handling (go)",
		Limit:  5,
		Return: []string{"$"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Score != 2.5 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSearchPage(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   string
	}{
		{"all", "", "*"},
		{"filtered", "@technology:(go*)", "@technology:(go*)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c := mock.NewClient(ctrl)

			c.EXPECT().
				Do(gomock.Any(), mock.Match("FT.SEARCH", "idx", tc.want, "LIMIT", "20", "10", "RETURN", "1", "$")).
				Return(mock.Result(mock.RedisArray(
					mock.RedisInt64(21),
					mock.RedisString("a"),
					mock.RedisArray(mock.RedisString("$"), mock.RedisString(`{"id":"a"}`)),
				)))

			res, err := NewStoreForTest(c).SearchPage(context.Background(), &db.PageQuery{
				Index: "idx", Filter: tc.filter, Offset: 20, Limit: 10, Return: []string{"$"},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Total != 21 || len(res.Entries) != 1 {
				t.Fatalf("unexpected result %+v", res)
			}
		})
	}
}

func TestParseReply_SkipsMalformedEntries(t *testing.T) {
	raw := []rueidis.RedisMessage{
		mock.RedisInt64(3),
		mock.RedisString("good"),
		mock.RedisString("1.5"),
		mock.RedisArray(mock.RedisString("$"), mock.RedisString("{}")),
		mock.RedisString("bad-score"),
		mock.RedisString("n/a"),
		mock.RedisArray(),
		mock.RedisString("trailing"),
	}

	res, err := parseReply(raw, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 3 || len(res.Entries) != 1 || res.Entries[0].Key != "good" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestParseReply_Empty(t *testing.T) {
	res, err := parseReply(nil, false)
	if err != nil || res.Total != 0 || res.Entries != nil {
		t.Fatalf("unexpected result %+v, %v", res, err)
	}
}

func TestVectorBlob_LittleEndian(t *testing.T) {
	blob := vectorBlob([]float32{1, -2.5})
	if len(blob) != 8 {
		t.Fatalf("len = %d, want 8", len(blob))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32([]byte(blob[4:]))); got != -2.5 {
		t.Errorf("second component = %v, want -2.5", got)
	}
}

func TestTextEscaper(t *testing.T) {
	if got, want := textEscaper.Replace(`red (car) @night`), `red \(car\) \@night`; got != want {
		t.Errorf("escaped = %q, want %q", got, want)
	}
}
