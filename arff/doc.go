// Package arff writes document vectors as sparse ARFF.
//
// The output has a comment block, one integer attribute w<i> per vocabulary
// word, a nominal class attribute and one sparse row per document:
//
//	@RELATION enron1_train
//
//	@ATTRIBUTE w0 integer
//	@ATTRIBUTE w1 integer
//	@ATTRIBUTE w2 integer
//	@ATTRIBUTE class  {ham,spam}
//
//	@DATA
//	{0 1,1 1,3 "ham"}
//	{0 1,1 1,2 1,3 "spam"}
//
// Zero counts are omitted. The class value sits at the index after the last
// feature.
package arff
