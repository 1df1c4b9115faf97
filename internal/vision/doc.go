// Package vision extracts structured information from images using a
// vision-capable LLM over the Messages API.
//
// Three operations are exposed on Client: ExtractRooms reads the room
// inventory out of a floor plan, DetectLabels locates room label text
// in an annotated plan, and IdentifyFurniture picks out the main
// furniture pieces in an interior photo. All three send a single
// user message containing one image block and one text block, and
// parse the model's JSON reply after stripping any markdown fence.
//
// A client constructed without an API key is inert: every call returns
// ErrNotConfigured so callers can degrade instead of failing the whole
// request. Non-2xx API responses surface as *upstream.Error.
package vision
