// Package pdfxlsx converts PDF documents into spreadsheet (.xlsx) files.
//
// The converter supports three extraction modes: tables, text, and auto.
// In auto mode it attempts table detection first and falls back to plain
// text extraction when no usable tables are found. Table detection runs on
// pdfium page objects using either explicit ruling lines (lattice) or
// word-alignment analysis (stream). Extracted content is normalized into
// rectangular grids and written with excelize, with per-cell number and
// date inference.
//
// A Converter is driven by a pdfium instance and is safe to reuse across
// documents; each conversion is an independent, stateless pipeline run.
package pdfxlsx
