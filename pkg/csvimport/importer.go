package csvimport

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/oyaguma3/lte-nms/pkg/logging"
	"github.com/oyaguma3/lte-nms/pkg/magma"
)

// RowOutcome は1行分の登録結果
type RowOutcome struct {
	Line int
	IMSI string
	// ID は成功時にサーバが割り当てた加入者ID
	ID  string
	Err error
}

// Succeeded は登録に成功したかどうかを返す。
func (o RowOutcome) Succeeded() bool {
	return o.Err == nil
}

// Result は一括登録の集計結果
type Result struct {
	// SucceededIDs は成功した行の加入者ID（行順）
	SucceededIDs []string
	// FailedIMSIs は失敗した行のIMSI（行順）
	FailedIMSIs []string
	// Outcomes は全行の結果（行順）
	Outcomes []RowOutcome
}

// HasFailures は失敗した行があるかどうかを返す。
func (r *Result) HasFailures() bool {
	return len(r.FailedIMSIs) > 0
}

// Callbacks は登録結果の通知先。いずれもnil可。
type Callbacks struct {
	// OnRow は各行の登録が完了するたびに呼ばれる。呼び出しは直列化される。
	OnRow func(RowOutcome)
	// OnSuccess は全行完了後、成功した行があれば1回呼ばれる
	OnSuccess func(ids []string)
	// OnFailure は全行完了後、失敗した行があれば1回呼ばれる
	OnFailure func(imsis []string)
}

// Importer はCSVを検証し、各行の加入者を並行して登録する。
type Importer struct {
	creator     SubscriberCreator
	concurrency int
	masker      *logging.Masker
}

// NewImporter は新しいImporterを生成する。
// concurrencyが0以下の場合はDefaultConcurrencyを使用する。
func NewImporter(creator SubscriberCreator, concurrency int, masker *logging.Masker) *Importer {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Importer{
		creator:     creator,
		concurrency: concurrency,
		masker:      masker,
	}
}

// Import はCSVをパースし、全行が妥当な場合のみ登録を開始する。
// 構造エラーの場合は作成APIを一切呼ばずにエラーを返す。
func (im *Importer) Import(ctx context.Context, networkID string, data []byte, cb Callbacks) (*Result, error) {
	parsed, err := Parse(data)
	if err != nil {
		slog.Warn("subscriber import rejected",
			logging.FieldEventID, "IMPORT_REJECT",
			logging.FieldTraceID, magma.TraceIDFromContext(ctx),
			logging.FieldNetworkID, networkID,
			logging.FieldError, err.Error(),
		)
		return nil, err
	}
	return im.Submit(ctx, networkID, parsed.Rows, cb), nil
}

// Submit は検証済みの行を並行して登録する。
// 1行の失敗が他の行を中断することはなく、全行の完了を待って結果を返す。
// 登録開始後は呼び出し元のキャンセルを伝播しない。
func (im *Importer) Submit(ctx context.Context, networkID string, rows []Row, cb Callbacks) *Result {
	traceID := magma.TraceIDFromContext(ctx)
	submitCtx := magma.WithTraceID(context.WithoutCancel(ctx), traceID)

	outcomes := make([]RowOutcome, len(rows))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(im.concurrency)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			id, err := im.creator.CreateSubscriber(submitCtx, networkID, row.Subscriber)
			out := RowOutcome{Line: row.Line, IMSI: row.Subscriber.IMSI(), Err: err}
			if err == nil {
				if id == "" {
					id = row.Subscriber.ID
				}
				out.ID = id
			} else {
				slog.Warn("subscriber create failed",
					logging.FieldEventID, "IMPORT_ROW_ERR",
					logging.FieldTraceID, traceID,
					im.masker.Attr(out.IMSI),
					"line", row.Line,
					logging.FieldError, err.Error(),
				)
			}

			mu.Lock()
			outcomes[i] = out
			if cb.OnRow != nil {
				cb.OnRow(out)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	result := &Result{
		SucceededIDs: []string{},
		FailedIMSIs:  []string{},
		Outcomes:     outcomes,
	}
	for _, out := range outcomes {
		if out.Succeeded() {
			result.SucceededIDs = append(result.SucceededIDs, out.ID)
		} else {
			result.FailedIMSIs = append(result.FailedIMSIs, out.IMSI)
		}
	}

	slog.Info("subscriber import finished",
		append([]any{logging.FieldEventID, "IMPORT_OK"},
			logging.ImportAttrs(traceID, networkID, len(rows), len(result.FailedIMSIs))...)...,
	)

	if len(result.SucceededIDs) > 0 && cb.OnSuccess != nil {
		cb.OnSuccess(result.SucceededIDs)
	}
	if len(result.FailedIMSIs) > 0 && cb.OnFailure != nil {
		cb.OnFailure(result.FailedIMSIs)
	}
	return result
}
