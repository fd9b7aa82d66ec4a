// domain holds the business entities and the metadata describing how each is persisted.
package domain
