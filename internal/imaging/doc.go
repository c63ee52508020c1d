// Package imaging provides input-image inspection: format sniffing,
// MIME type resolution, dimension probing, and EXIF metadata extraction
// for the report's Original panel.
//
// Decoders are registered for the formats the pipeline accepts (PNG,
// JPEG, GIF, WebP, BMP, TIFF); decoding itself is never performed, only
// image.DecodeConfig, so probing stays cheap even for large files.
package imaging
