package arffconv

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/arffconv/archive"
	"github.com/hupe1980/arffconv/arff"
	"github.com/hupe1980/arffconv/blobstore"
	"github.com/hupe1980/arffconv/internal/hash"
	"github.com/hupe1980/arffconv/vector"
	"github.com/hupe1980/arffconv/vocab"
)

// Converter turns dataset families into ARFF files.
// It is safe for concurrent use.
type Converter struct {
	in   blobstore.BlobStore
	out  blobstore.WritableStore
	opts options
}

// New returns a Converter reading archives from in and writing outputs to
// out.
//
// Example:
//
//	in := blobstore.NewLocalStore("dataset/ZipFiles")
//	out := blobstore.NewLocalStore("dataset/ARFF")
//	conv, _ := arffconv.New(in, out)
//	report, err := conv.Run(ctx, arffconv.DefaultFamilies()...)
func New(in blobstore.BlobStore, out blobstore.WritableStore, optFns ...Option) (*Converter, error) {
	if in == nil || out == nil {
		return nil, ErrNilStore
	}
	return &Converter{
		in:   in,
		out:  out,
		opts: applyOptions(optFns),
	}, nil
}

// Run converts families in order and returns their results.
//
// Under ContinueOnError the returned error is only non-nil when ctx ends;
// failures are in the Report. Under FailFast the first StageError stops the
// run and is returned together with the results gathered so far.
func (c *Converter) Run(ctx context.Context, families ...Family) (*Report, error) {
	if len(families) == 0 {
		return nil, ErrNoFamilies
	}

	results := make([]*Result, len(families))

	if c.opts.parallelism <= 1 || len(families) == 1 {
		for i, f := range families {
			res, err := c.Convert(ctx, f)
			results[i] = res
			if err != nil {
				return &Report{Results: results[:i+1]}, err
			}
		}
		return &Report{Results: results}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.parallelism)

	for i, f := range families {
		g.Go(func() error {
			if err := c.opts.resource.AcquireWorker(gctx); err != nil {
				return err
			}
			defer c.opts.resource.ReleaseWorker()

			res, err := c.Convert(gctx, f)
			results[i] = res
			return err
		})
	}

	err := g.Wait()

	report := &Report{Results: make([]*Result, 0, len(results))}
	for _, res := range results {
		if res != nil {
			report.Results = append(report.Results, res)
		}
	}
	return report, err
}

// Convert runs the pipeline for one family: the vocabulary is built once
// from the training archive, both labels of both archives are vectorized
// against it, and two ARFF outputs are written.
func (c *Converter) Convert(ctx context.Context, f Family) (*Result, error) {
	start := time.Now()

	cv := &conversion{
		Converter: c,
		family:    f,
		result: &Result{
			Family: f,
			Train:  SplitResult{Relation: f.Train},
			Test:   SplitResult{Relation: f.Test},
		},
	}

	err := cv.run(ctx)

	cv.result.Duration = time.Since(start)
	c.opts.logger.LogFamily(ctx, f.Name, cv.result.VocabularySize, len(cv.result.Failures), cv.result.Duration)

	return cv.result, err
}

// conversion holds the state of one Convert call.
type conversion struct {
	*Converter
	family Family
	result *Result
}

func (cv *conversion) run(ctx context.Context) error {
	train, err := cv.open(ctx, cv.family.Train)
	if err := cv.fail(ctx, cv.family.Train, StageOpen, err); err != nil {
		return err
	}
	if train != nil {
		defer train.Close()
	}

	// a missing training archive still produces outputs, with no attributes
	v := vocab.New(nil)
	if train != nil {
		start := time.Now()
		built, err := vocab.FromArchive(ctx, train)
		v = built
		cv.opts.metricsCollector.RecordVocabulary(v.Len(), time.Since(start))
		cv.opts.logger.LogVocabulary(ctx, cv.family.Train, v.Len(), err)
		if err := cv.fail(ctx, cv.family.Train, StageVocabulary, err); err != nil {
			return err
		}
	}
	cv.result.VocabularySize = v.Len()

	vz := vector.New(v)
	if err := cv.split(ctx, vz, train, &cv.result.Train); err != nil {
		return err
	}
	if train != nil {
		_ = train.Close()
	}

	test, err := cv.open(ctx, cv.family.Test)
	if err := cv.fail(ctx, cv.family.Test, StageOpen, err); err != nil {
		return err
	}
	if test != nil {
		defer test.Close()
	}
	if err := cv.split(ctx, vz, test, &cv.result.Test); err != nil {
		return err
	}

	if cv.opts.sidecar {
		return cv.writeSidecar(ctx, v)
	}
	return nil
}

func (cv *conversion) open(ctx context.Context, relation string) (*archive.Archive, error) {
	start := time.Now()
	a, err := archive.OpenFrom(ctx, cv.in, archiveName(relation), archive.WithController(cv.opts.resource))
	cv.opts.metricsCollector.RecordArchive(time.Since(start), err)
	return a, err
}

// split vectorizes ham then spam documents of a and writes them as one
// relation. A nil archive yields a relation without rows.
func (cv *conversion) split(ctx context.Context, vz *vector.Vectorizer, a *archive.Archive, sr *SplitResult) error {
	var docs []*vector.Document

	if a != nil {
		for _, label := range vector.Labels {
			start := time.Now()
			ds, err := vz.FromArchive(ctx, a, label)
			cv.opts.metricsCollector.RecordVectorize(label, len(ds), time.Since(start))
			cv.opts.logger.LogVectorize(ctx, sr.Relation, label, len(ds), err)

			switch label {
			case vector.Ham:
				sr.Ham = len(ds)
			case vector.Spam:
				sr.Spam = len(ds)
			}
			docs = append(docs, ds...)

			if err := cv.fail(ctx, sr.Relation, StageVectorize, err); err != nil {
				return err
			}
		}
	}

	return cv.write(ctx, vz.Size(), docs, sr)
}

func (cv *conversion) write(ctx context.Context, vocabSize int, docs []*vector.Document, sr *SplitResult) error {
	sr.Name = sr.Relation + ".arff" + cv.opts.compression.Ext()

	start := time.Now()
	data, err := cv.encode(ctx, sr.Relation, sr.Name, vocabSize, docs)
	cv.opts.metricsCollector.RecordWrite(len(data), time.Since(start), err)
	cv.opts.logger.LogWrite(ctx, sr.Relation, sr.Name, len(data), err)

	if err == nil {
		sr.Written = true
		sr.Bytes = len(data)
		sr.CRC32C = hash.Hex(hash.CRC32C(data))
	}
	return cv.fail(ctx, sr.Relation, StageWrite, err)
}

// encode assembles the whole document in memory, then stores it. It returns
// the stored bytes.
func (cv *conversion) encode(ctx context.Context, relation, name string, vocabSize int, docs []*vector.Document) ([]byte, error) {
	aopts := cv.opts.arffOptions()

	size := int64(arff.Size(relation, vocabSize, docs, aopts...))
	if err := cv.opts.resource.AcquireMemory(ctx, size); err != nil {
		return nil, err
	}
	defer cv.opts.resource.ReleaseMemory(size)

	data, err := cv.opts.compression.Compress(arff.Marshal(relation, vocabSize, docs, aopts...))
	if err != nil {
		return nil, err
	}
	if err := cv.out.Put(ctx, name, data); err != nil {
		return nil, err
	}
	return data, nil
}

type vocabularySidecar struct {
	Family   string   `json:"family"`
	Relation string   `json:"relation"`
	Size     int      `json:"size"`
	Words    []string `json:"words"`
}

func (cv *conversion) writeSidecar(ctx context.Context, v *vocab.Vocabulary) error {
	name := cv.family.Name + "_vocab.json"

	data, err := cv.opts.codec.Marshal(vocabularySidecar{
		Family:   cv.family.Name,
		Relation: cv.family.Train,
		Size:     v.Len(),
		Words:    v.Words(),
	})
	if err == nil {
		err = cv.out.Put(ctx, name, data)
	}
	cv.opts.logger.LogWrite(ctx, cv.family.Train, name, len(data), err)

	if err == nil {
		cv.result.Sidecar = name
	}
	return cv.fail(ctx, cv.family.Train, StageSidecar, err)
}

// fail records err as failures of stage. It returns a non-nil error when
// the run must stop: ctx is done, or the policy is FailFast.
func (cv *conversion) fail(ctx context.Context, relation string, stage Stage, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return ctxErr
	}

	for _, f := range failures(cv.family.Name, relation, stage, err) {
		cv.opts.logger.LogFailure(ctx, f)
		cv.opts.metricsCollector.RecordFailure(stage)
		cv.result.Failures = append(cv.result.Failures, f)
	}

	if cv.opts.policy == FailFast {
		return &StageError{
			Family:   cv.family.Name,
			Relation: relation,
			Stage:    stage,
			Err:      err,
		}
	}
	return nil
}
