// Package arffconv converts labeled ham/spam email corpora, packaged as zip
// archives of text files, into sparse ARFF files for machine-learning
// tooling.
//
// # Pipeline
//
// Each dataset family is a pair of archives, "<family>_train.zip" and
// "<family>_test.zip". Converting a family runs four stages:
//
//  1. Archive reading: entries are selected by full-name regular expression
//     (".*txt" for the vocabulary, ".*ham.txt" and ".*spam.txt" per label)
//     and streamed line by line.
//  2. Vocabulary: every token of the training archive, split on single
//     spaces, in first-occurrence order. A token's position is its feature
//     index.
//  3. Vectorization: one count vector per document for train and test,
//     against the training vocabulary. Unknown tokens are dropped.
//  4. Serialization: "<family>_train.arff" and "<family>_test.arff", ham
//     rows first, in sparse row format.
//
// # Quick Start
//
//	ctx := context.Background()
//	in := blobstore.NewLocalStore("dataset/ZipFiles")
//	out := blobstore.NewLocalStore("dataset/ARFF")
//
//	conv, _ := arffconv.New(in, out)
//	report, err := conv.Run(ctx, arffconv.DefaultFamilies()...)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range report.Failures() {
//	    fmt.Println(f.Family, f.Stage, f.Message)
//	}
//
// Cloud mode reads archives from S3 or MinIO and can write the outputs back:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	client := awss3.NewFromConfig(cfg)
//	in := s3.NewStore(client, "datasets", "ZipFiles/")
//	out := s3.NewStore(client, "datasets", "ARFF/")
//	conv, _ := arffconv.New(blobstore.NewLRUCachingStore(in, 64<<20, nil), out)
//
// # Error Handling
//
// By default a failing archive, entry or write is logged, recorded in the
// Report, and skipped: the batch always finishes with whatever data could
// be read. WithErrorPolicy(FailFast) stops at the first failure instead and
// returns a *StageError.
//
// # Options
//
//	arffconv.WithParallelism(3)                     // convert families concurrently
//	arffconv.WithCompression(arff.Zstd)             // write .arff.zst
//	arffconv.WithVocabularySidecar(true)            // write <family>_vocab.json
//	arffconv.WithResourceController(rc)             // memory, IO and worker budgets
//	arffconv.WithLogger(arffconv.NewJSONLogger(slog.LevelInfo))
package arffconv
