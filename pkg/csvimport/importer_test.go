package csvimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/oyaguma3/lte-nms/pkg/magma"
	"github.com/oyaguma3/lte-nms/pkg/model"
)

const (
	testNetwork = "net1"
	imsi1       = "001010000000001"
	imsi2       = "001010000000002"
)

func setupImporter(t *testing.T, concurrency int) (*Importer, *MockSubscriberCreator) {
	t.Helper()
	ctrl := gomock.NewController(t)
	creator := NewMockSubscriberCreator(ctrl)
	return NewImporter(creator, concurrency, nil), creator
}

// 構造エラーの場合は作成APIが一度も呼ばれないことを確認する
func TestImport_StructuralErrorsIssueNoCalls(t *testing.T) {
	tooMany := make([]string, MaxUploadRows+1)
	for i := range tooMany {
		tooMany[i] = validRow(fmt.Sprintf("0010100%08d", i))
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"header mismatch", []byte("imsi,state,key,opc,profile,apns\n" + validRow(imsi1) + "\n"), ErrHeaderMismatch},
		{"too many rows", csvText(NewlineLF, tooMany...), ErrTooManyRows},
		{"missing imsi", csvText(NewlineLF, validRow(imsi1), ",ACTIVE,"+validKey+",,,"), ErrIncompleteRow},
		{"missing key", csvText(NewlineLF, validRow(imsi1), imsi2+",ACTIVE,,,,"), ErrIncompleteRow},
		{"bad state", csvText(NewlineLF, validRow(imsi1), imsi2+",UNKNOWN,"+validKey+",,,"), ErrIncompleteRow},
		{"binary", []byte{0x00, 0x01, 0x02}, ErrNotTextFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im, creator := setupImporter(t, 0)
			creator.EXPECT().CreateSubscriber(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			var called bool
			cb := Callbacks{
				OnRow:     func(RowOutcome) { called = true },
				OnSuccess: func([]string) { called = true },
				OnFailure: func([]string) { called = true },
			}
			res, err := im.Import(context.Background(), testNetwork, tt.data, cb)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Import() error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Error("Import() should not return a result on structural error")
			}
			if called {
				t.Error("callbacks should not fire on structural error")
			}
		})
	}
}

// 1行目成功・2行目失敗の場合、それぞれ成功ID・失敗IMSIとして報告され、
// 一方の報告が他方の完了を待たないことを確認する
func TestImport_PartialFailureReportsIndependently(t *testing.T) {
	im, creator := setupImporter(t, 0)

	row2Reported := make(chan struct{})
	creator.EXPECT().CreateSubscriber(gomock.Any(), testNetwork, gomock.Any()).DoAndReturn(
		func(ctx context.Context, networkID string, sub *model.Subscriber) (string, error) {
			if sub.IMSI() == imsi1 {
				// 2行目の報告を待ってから完了する
				select {
				case <-row2Reported:
				case <-time.After(5 * time.Second):
					t.Error("row 2 outcome was not reported before row 1 settled")
				}
				return "IMSI" + imsi1, nil
			}
			return "", errors.New("orchestrator unavailable")
		}).Times(2)

	var (
		order     []string
		successes []string
		failures  []string
	)
	cb := Callbacks{
		OnRow: func(out RowOutcome) {
			order = append(order, out.IMSI)
			if out.IMSI == imsi2 {
				close(row2Reported)
			}
		},
		OnSuccess: func(ids []string) { successes = ids },
		OnFailure: func(imsis []string) { failures = imsis },
	}

	res, err := im.Import(context.Background(), testNetwork, csvText(NewlineLF, validRow(imsi1), validRow(imsi2)), cb)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if len(successes) != 1 || successes[0] != "IMSI"+imsi1 {
		t.Errorf("OnSuccess ids = %v", successes)
	}
	if len(failures) != 1 || failures[0] != imsi2 {
		t.Errorf("OnFailure imsis = %v", failures)
	}
	if len(order) != 2 || order[0] != imsi2 || order[1] != imsi1 {
		t.Errorf("OnRow order = %v, want [%s %s]", order, imsi2, imsi1)
	}
	if !res.HasFailures() {
		t.Error("HasFailures() = false")
	}
	if res.Outcomes[0].Line != 2 || res.Outcomes[1].Line != 3 {
		t.Errorf("Outcomes should be in row order: %+v", res.Outcomes)
	}
	if res.Outcomes[1].Succeeded() {
		t.Error("row 2 should be failed")
	}
}

func TestImport_AllSucceed(t *testing.T) {
	im, creator := setupImporter(t, 0)
	creator.EXPECT().CreateSubscriber(gomock.Any(), testNetwork, gomock.Any()).DoAndReturn(
		func(ctx context.Context, networkID string, sub *model.Subscriber) (string, error) {
			return sub.ID, nil
		}).Times(2)

	failureCalled := false
	res, err := im.Import(context.Background(), testNetwork, csvText(NewlineCRLF, validRow(imsi1), validRow(imsi2)), Callbacks{
		OnFailure: func([]string) { failureCalled = true },
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if failureCalled {
		t.Error("OnFailure should not fire when every row succeeds")
	}
	if len(res.SucceededIDs) != 2 || res.SucceededIDs[0] != "IMSI"+imsi1 || res.SucceededIDs[1] != "IMSI"+imsi2 {
		t.Errorf("SucceededIDs = %v", res.SucceededIDs)
	}
	if len(res.FailedIMSIs) != 0 {
		t.Errorf("FailedIMSIs = %v", res.FailedIMSIs)
	}
}

func TestImport_EmptyServerIDFallsBackToSubmittedID(t *testing.T) {
	im, creator := setupImporter(t, 0)
	creator.EXPECT().CreateSubscriber(gomock.Any(), testNetwork, gomock.Any()).Return("", nil)

	res, err := im.Import(context.Background(), testNetwork, csvText(NewlineLF, validRow(imsi1)), Callbacks{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.SucceededIDs[0] != "IMSI"+imsi1 {
		t.Errorf("SucceededIDs = %v", res.SucceededIDs)
	}
}

// 登録開始後は呼び出し元のキャンセルが伝播しないことを確認する
func TestImport_CallerCancellationDoesNotAbortSubmission(t *testing.T) {
	im, creator := setupImporter(t, 0)

	ctx, cancel := context.WithCancel(magma.WithTraceID(context.Background(), "trace-import"))
	cancel()

	creator.EXPECT().CreateSubscriber(gomock.Any(), testNetwork, gomock.Any()).DoAndReturn(
		func(ctx context.Context, networkID string, sub *model.Subscriber) (string, error) {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if got := magma.TraceIDFromContext(ctx); got != "trace-import" {
				t.Errorf("trace id = %q, want trace-import", got)
			}
			return sub.ID, nil
		}).Times(2)

	res, err := im.Import(ctx, testNetwork, csvText(NewlineLF, validRow(imsi1), validRow(imsi2)), Callbacks{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.HasFailures() {
		t.Errorf("FailedIMSIs = %v, cancellation should not reach submissions", res.FailedIMSIs)
	}
}

func TestImport_ConcurrencyLimit(t *testing.T) {
	const limit = 3
	im, creator := setupImporter(t, limit)

	var inFlight, peak int32
	creator.EXPECT().CreateSubscriber(gomock.Any(), testNetwork, gomock.Any()).DoAndReturn(
		func(ctx context.Context, networkID string, sub *model.Subscriber) (string, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return sub.ID, nil
		}).Times(12)

	rows := make([]string, 12)
	for i := range rows {
		rows[i] = validRow(fmt.Sprintf("0010100000000%02d", i))
	}

	var mu sync.Mutex
	reported := 0
	res, err := im.Import(context.Background(), testNetwork, csvText(NewlineLF, rows...), Callbacks{
		OnRow: func(RowOutcome) {
			mu.Lock()
			reported++
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if got := atomic.LoadInt32(&peak); got > limit {
		t.Errorf("peak in-flight = %d, want <= %d", got, limit)
	}
	if reported != 12 || len(res.SucceededIDs) != 12 {
		t.Errorf("reported = %d, succeeded = %d, want 12", reported, len(res.SucceededIDs))
	}
}

func TestImport_AllFailListsEveryIMSI(t *testing.T) {
	im, creator := setupImporter(t, 1)
	creator.EXPECT().CreateSubscriber(gomock.Any(), testNetwork, gomock.Any()).
		Return("", errors.New("conflict")).Times(2)

	var failures []string
	successCalled := false
	_, err := im.Import(context.Background(), testNetwork, csvText(NewlineLF, validRow(imsi1), validRow(imsi2)), Callbacks{
		OnSuccess: func([]string) { successCalled = true },
		OnFailure: func(imsis []string) { failures = imsis },
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if successCalled {
		t.Error("OnSuccess should not fire when every row fails")
	}
	if strings.Join(failures, ",") != imsi1+","+imsi2 {
		t.Errorf("failures = %v", failures)
	}
}

// 一部の行が5xxで失敗しても、同一バッチの後続行は実際に送信され成功することを確認する
func TestImport_ServerErrorsDoNotBlockLaterRows(t *testing.T) {
	const failPrefix = "00199"
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), model.SubscriberIDPrefix+failPrefix) {
			w.Header().Set(magma.HeaderContentType, magma.ContentTypeProblem)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"type":"about:blank","title":"Internal Server Error","status":500}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	var rows []string
	for i := 1; i <= magma.CBFailureThreshold; i++ {
		rows = append(rows, validRow(fmt.Sprintf("%s%010d", failPrefix, i)))
	}
	for i := 1; i <= magma.CBFailureThreshold; i++ {
		rows = append(rows, validRow(fmt.Sprintf("00101%010d", i)))
	}

	im := NewImporter(magma.NewClient(magma.Options{BaseURL: server.URL}), 1, nil)
	res, err := im.Import(context.Background(), testNetwork, csvText(NewlineLF, rows...), Callbacks{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if got := len(res.FailedIMSIs); got != magma.CBFailureThreshold {
		t.Errorf("failed = %d, want %d", got, magma.CBFailureThreshold)
	}
	if got := len(res.SucceededIDs); got != magma.CBFailureThreshold {
		t.Errorf("succeeded = %d, want %d", got, magma.CBFailureThreshold)
	}
	if got := int(calls.Load()); got != len(rows) {
		t.Errorf("requests = %d, want %d", got, len(rows))
	}
	for _, o := range res.Outcomes {
		if errors.Is(o.Err, magma.ErrCircuitOpen) {
			t.Errorf("line %d: %v", o.Line, o.Err)
		}
		if strings.HasPrefix(o.IMSI, failPrefix) == o.Succeeded() {
			t.Errorf("line %d (%s): succeeded = %v", o.Line, o.IMSI, o.Succeeded())
		}
	}
}
