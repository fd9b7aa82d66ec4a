// sqlp maps entities to single table rows from declarative, reflection free metadata.
//   - Metadata: an entity's table, and typed column bindings built from getter/setter closures.
//   - Statement derivation: INSERT (sequence driven ids), SELECT, UPDATE and DELETE text from
//     metadata, with per statement overrides for the odd entity.
//   - Generic DAO: create, fetch by code, fetch all, update and delete, one connection per call.
//   - Row reconstruction keyed by column name, reading by each column's semantic kind.
//   - An error taxonomy separating connection, parameter, mapping and storage failures.
package sqlp
