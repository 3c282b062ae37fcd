// Package server exposes the vectorizer to MCP (Model Context Protocol)
// clients as a JSON-RPC 2.0 service on a line-oriented stream, normally the
// stdio of "image-vectorize serve".
//
// Each input line is one request; each reply is one line. Lines that do not
// parse are logged and skipped. The methods are initialize, tools/list,
// tools/call and ping; notifications/initialized gets no reply.
//
// # Tools
//
//   - image_load: size, format, color depth and alpha of an input file
//   - image_dimensions: width and height only
//   - image_vectorize: the SVG document, inline or written to output_path
//   - image_foreground_mask: the foreground/background split as a PNG
//
// The two conversion tools take per-call values for white_threshold,
// min_area, stroke_width, sharpen_factor, enable_upscale, enable_sharpen and
// upscale_factor. Anything omitted comes from the loaded configuration.
//
// A picture with nothing but background converts successfully to an empty
// SVG with region_count 0 and a message saying why.
//
// Decoded inputs are cached by path for the life of the process and decoded
// again when the file on disk changes.
//
// # Errors
//
// Unknown methods get -32601 and undecodable tools/call params get -32602.
// A failing tool (bad path, unsupported format, out of range option) gets
// -32000 with the Go error text in data.
//
//	srv := server.New(cfg, nil)
//	err := srv.Serve(ctx, os.Stdin, os.Stdout)
package server
