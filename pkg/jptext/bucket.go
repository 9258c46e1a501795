package jptext

// Bucket is the coarse script class of a normalized query, used to pick
// the matching index shard.
type Bucket string

const (
	BucketHiragana Bucket = "hiragana"
	BucketKatakana Bucket = "katakana"
	BucketLatin    Bucket = "latin"
	BucketKanji    Bucket = "kanji"
	BucketOther    Bucket = "other"
)

// Classify assigns a normalized string to exactly one bucket. The
// hiragana, katakana and latin classes must match the whole string;
// the kanji class triggers on any CJK ideograph anywhere in it.
func Classify(q string) Bucket {
	if hiraganaRE.MatchString(q) {
		return BucketHiragana
	}
	if katakanaRE.MatchString(q) {
		return BucketKatakana
	}
	if latinishRE.MatchString(q) {
		return BucketLatin
	}
	if kanjiRE.MatchString(q) {
		return BucketKanji
	}
	return BucketOther
}
