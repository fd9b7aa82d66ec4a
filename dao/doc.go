// dao holds the accessors for each entity.
// Clients and products go through the generic sqlp engine, supplying only their metadata and
// parameter order. Inventory entries are read and written by hand.
package dao
