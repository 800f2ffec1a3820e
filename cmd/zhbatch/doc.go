// Package main hosts the zhbatch CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the conversion
// dispatcher and task runner, and drives content and filename tasks through
// a workspace so progress, pause/resume signals, and result writeback follow
// one event path. Finished runs are recorded in the history database.
//
// Commands stay thin: conversion rules, encoding detection, naming, and
// task orchestration live in the internal packages.
package main
