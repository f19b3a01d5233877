// Package scoring holds the pure calculators that turn listening, emotion and
// activity data into bounded 0-100 scores with a trend and explanation.
//
// Every function here is synchronous and side-effect free. Missing or
// insufficient data is reported through sentinel results (nil baseline, score
// 0, confidence 0, a "waiting" indicator) rather than errors; callers validate
// input at the boundary before calling in.
package scoring
