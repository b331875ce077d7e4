package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mediasense/internal/domain"
	domcompl "github.com/kailas-cloud/mediasense/internal/domain/completion"
	dominst "github.com/kailas-cloud/mediasense/internal/domain/instruction"
	dommedia "github.com/kailas-cloud/mediasense/internal/domain/media"
	"github.com/kailas-cloud/mediasense/internal/domain/rank"
	"github.com/kailas-cloud/mediasense/internal/domain/vector"
	completionuc "github.com/kailas-cloud/mediasense/internal/usecase/completion"
	healthuc "github.com/kailas-cloud/mediasense/internal/usecase/health"
)

type mockEmbedding struct {
	imageFn func(ctx context.Context, data []byte) (domain.EmbeddingResult, error)
	urlFn   func(ctx context.Context, url string) (domain.EmbeddingResult, error)
	textFn  func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedding) EmbedImage(ctx context.Context, data []byte) (domain.EmbeddingResult, error) {
	return m.imageFn(ctx, data)
}

func (m *mockEmbedding) EmbedImageFromURL(ctx context.Context, url string) (domain.EmbeddingResult, error) {
	return m.urlFn(ctx, url)
}

func (m *mockEmbedding) EmbedText(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	return m.textFn(ctx, text)
}

type mockSearch struct {
	searchFn func(ctx context.Context, q []float32, limit int) ([]dommedia.Hit, error)
	byTextFn func(ctx context.Context, text string, limit int) ([]dommedia.Hit, error)
	getFn    func(ctx context.Context, id string) (dommedia.Document, error)
	idsFn    func(ctx context.Context) ([]string, error)
	infoFn   func(ctx context.Context, id string) (vector.Stats, error)
	metaFn   func(ctx context.Context, id string, labels []string, metric string) ([]rank.Result, error)
	ingestFn func(ctx context.Context, id, name, url string) (dommedia.Document, error)
}

func (m *mockSearch) Search(ctx context.Context, q []float32, limit int) ([]dommedia.Hit, error) {
	return m.searchFn(ctx, q, limit)
}

func (m *mockSearch) SearchByText(ctx context.Context, text string, limit int) ([]dommedia.Hit, error) {
	return m.byTextFn(ctx, text, limit)
}

func (m *mockSearch) Get(ctx context.Context, id string) (dommedia.Document, error) {
	return m.getFn(ctx, id)
}

func (m *mockSearch) ListIDs(ctx context.Context) ([]string, error) { return m.idsFn(ctx) }

func (m *mockSearch) EmbeddingInfo(ctx context.Context, id string) (vector.Stats, error) {
	return m.infoFn(ctx, id)
}

func (m *mockSearch) MetaInfo(ctx context.Context, id string, labels []string, metric string) ([]rank.Result, error) {
	return m.metaFn(ctx, id, labels, metric)
}

func (m *mockSearch) Ingest(ctx context.Context, id, name, url string) (dommedia.Document, error) {
	return m.ingestFn(ctx, id, name, url)
}

type mockInstructions struct {
	createFn func(ctx context.Context, tech, ins string, rules []string) (dominst.Template, error)
	getFn    func(ctx context.Context, id string) (dominst.Template, error)
	idsFn    func(ctx context.Context) ([]string, error)
	listFn   func(ctx context.Context, page, size int, tech string) (dominst.Page, error)
	searchFn func(ctx context.Context, q string, limit int) ([]dominst.Match, error)
}

func (m *mockInstructions) Create(ctx context.Context, tech, ins string, rules []string) (dominst.Template, error) {
	return m.createFn(ctx, tech, ins, rules)
}

func (m *mockInstructions) Get(ctx context.Context, id string) (dominst.Template, error) {
	return m.getFn(ctx, id)
}

func (m *mockInstructions) ListIDs(ctx context.Context) ([]string, error) { return m.idsFn(ctx) }

func (m *mockInstructions) List(ctx context.Context, page, size int, tech string) (dominst.Page, error) {
	return m.listFn(ctx, page, size, tech)
}

func (m *mockInstructions) Search(ctx context.Context, q string, limit int) ([]dominst.Match, error) {
	return m.searchFn(ctx, q, limit)
}

type mockCompletion struct {
	fn func(ctx context.Context, in completionuc.Input) (domcompl.Response, error)
}

func (m *mockCompletion) Complete(ctx context.Context, in completionuc.Input) (domcompl.Response, error) {
	return m.fn(ctx, in)
}

type mockHealth struct{ report healthuc.Report }

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

// newTestRouter serves svc through the real route table.
func newTestRouter(t *testing.T, svc Services) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	NewServer(svc, zap.NewNop()).Routes(r)
	return r
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
