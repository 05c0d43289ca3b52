// Package core provides the catalog seeding pipeline.
//
// This package holds the domain logic for reseeding the Tribe, Profession and
// TalkingPoint tables from CSV files, independent of the store backend and of
// where the files live. It can be driven by the CLI, the scheduler, or tests.
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Table Definitions: registered in dependency order, each with the CSV
//     columns it reads and which of them are required.
//   - Store and Session: the store hands out a Session that owns one
//     connection for the whole run, including foreign key toggling.
//   - Seeder: runs the fixed sequence of steps and returns a [Report]. Runs
//     on one Seeder never overlap.
//   - Scheduler: reruns the Seeder on a cron schedule.
//
// # Run Order
//
// [Seeder.Run] executes, in order:
//
//  1. Disable foreign key checks on the session
//  2. Replace tribes (skipped when the tribe file is absent)
//  3. Delete talking points, then professions
//  4. Insert professions, remembering their generated ids
//  5. Insert talking points from each file, resolving professions in memory
//  6. Re-enable foreign key checks, also when an earlier step failed
//
// Rows missing required fields and talking points naming an unknown
// profession are skipped. Skips are counted in the report, never raised.
//
// # Error Handling
//
// Store errors are mapped to coded messages using [MapError]:
//
//   - DB001-DB009: Database errors (duplicates, constraints, connections, schema, permissions)
//   - SRC001-SRC002: Source errors (reading seed files, manifest)
//   - RUN001-RUN003: Run errors (cancelled, timed out, already running)
package core
