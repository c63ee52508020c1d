// Package prompt builds the instruction strings sent to the generative
// model: analysis prompts asking for structured descriptions of an image,
// and synthesis prompts asking for an image reconstruction from a
// description.
package prompt
