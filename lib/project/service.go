// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scratchrobin/scratchrobin/lib/projectbin"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

// Service reads and writes project containers on disk. It holds no
// per-call state and is safe for concurrent use on distinct paths.
type Service struct {
	logger *slog.Logger
}

// NewService returns a Service. A nil logger discards output.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{logger: logger}
}

// RoundTripResult summarizes a write that was verified by reloading.
type RoundTripResult struct {
	BytesWritten int      `json:"bytes_written"`
	TOCEntries   int      `json:"toc_entries"`
	LoadedChunks []string `json:"loaded_chunks"`
	Fingerprint  string   `json:"fingerprint"`
}

// RoundTripFile builds a container from the payloads, writes it to
// path (creating parent directories), and reloads it through LoadFile.
func (s *Service) RoundTripFile(path string, projectPayload, objectsPayload []byte, optional map[string][]byte) (RoundTripResult, error) {
	data, err := projectbin.Build(projectPayload, objectsPayload, optional)
	if err != nil {
		return RoundTripResult{}, err
	}
	if err := writeFile(path, data); err != nil {
		return RoundTripResult{}, err
	}

	loaded, err := s.LoadFile(path)
	if err != nil {
		return RoundTripResult{}, err
	}

	result := RoundTripResult{
		BytesWritten: len(data),
		TOCEntries:   len(loaded.TOC),
		LoadedChunks: loaded.LoadedChunks(),
		Fingerprint:  projectbin.Fingerprint(data),
	}
	s.logger.Info("project container written",
		"path", path,
		"bytes", result.BytesWritten,
		"chunks", result.TOCEntries,
	)
	return result, nil
}

// LoadFile reads and verifies the container at path.
func (s *Service) LoadFile(path string) (*projectbin.Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, reject.New(reject.CodeProjectBinary, "failed to read binary", "project", "load_file",
			reject.WithDetails(path))
	}
	return projectbin.Load(data)
}

func writeFile(path string, data []byte) error {
	openFailure := func() error {
		return reject.New(reject.CodeProjectBinary, "failed to open output path", "project", "roundtrip_file",
			reject.WithDetails(path))
	}
	writeFailure := func() error {
		return reject.New(reject.CodeProjectBinary, "failed to write binary", "project", "roundtrip_file",
			reject.WithDetails(path))
	}

	if directory := filepath.Dir(path); directory != "" {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return openFailure()
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return openFailure()
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return writeFailure()
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return writeFailure()
	}
	if err := file.Close(); err != nil {
		return writeFailure()
	}
	return nil
}

// Project is the decoded content of a container.
type Project struct {
	Document Document
	Catalog  ObjectCatalog
	// Assets maps optional chunk ids to their decoded bytes.
	Assets map[string][]byte
}

// Save encodes the project and writes it with RoundTripFile. Every
// asset is wrapped with the given compression.
func (s *Service) Save(path string, p Project, compression Compression) (RoundTripResult, error) {
	projectPayload, err := EncodeDocument(p.Document)
	if err != nil {
		return RoundTripResult{}, err
	}
	objectsPayload, err := EncodeCatalog(p.Catalog)
	if err != nil {
		return RoundTripResult{}, err
	}
	optional := make(map[string][]byte, len(p.Assets))
	for id, data := range p.Assets {
		envelope, err := EncodeAsset(data, compression)
		if err != nil {
			return RoundTripResult{}, err
		}
		optional[id] = envelope
	}
	return s.RoundTripFile(path, projectPayload, objectsPayload, optional)
}

// Open loads and decodes the project at path. Optional chunks that are
// not asset envelopes are skipped, so files carrying chunks from newer
// tools still open.
func (s *Service) Open(path string) (Project, error) {
	loaded, err := s.LoadFile(path)
	if err != nil {
		return Project{}, err
	}

	projectPayload, _ := loaded.Chunk(projectbin.ChunkProject)
	document, err := DecodeDocument(projectPayload)
	if err != nil {
		return Project{}, err
	}
	objectsPayload, _ := loaded.Chunk(projectbin.ChunkObjects)
	catalog, err := DecodeCatalog(objectsPayload)
	if err != nil {
		return Project{}, err
	}

	assets := make(map[string][]byte)
	for _, id := range loaded.LoadedChunks() {
		if id == projectbin.ChunkProject || id == projectbin.ChunkObjects {
			continue
		}
		envelope, _ := loaded.Chunk(id)
		data, _, err := DecodeAsset(envelope)
		if err != nil {
			s.logger.Warn("skipping unreadable optional chunk", "path", path, "chunk", id, "error", err)
			continue
		}
		assets[id] = data
	}

	return Project{Document: document, Catalog: catalog, Assets: assets}, nil
}
