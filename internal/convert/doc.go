// Package convert performs Simplified/Traditional Chinese conversion.
//
// A Dispatcher runs the base dictionary conversion for a Direction once and
// then applies the user's Vocabulary overlay as sequential literal
// replacement passes, in insertion order. Later pairs see the output of
// earlier ones. Provider failures never escape Apply: the output becomes a
// visible "Conversion error: ..." string instead.
//
// Classifiers decide whether a piece of text should be converted at all.
package convert
