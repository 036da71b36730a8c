/*
Package ports defines the interfaces through which atelier components collaborate.

The design host, its services and the designers it creates are all consumed
through these contracts, so that a host can be assembled from any mix of
built-in and externally supplied services.

# Key Interfaces

  - DesignerHost: the top-level container, service container and transaction factory.
  - ComponentChangeService: change notifications around every component mutation.
  - DictionaryService, NameCreationService, ExtenderProviderService: per-site and per-host services.
  - Designer / RootDesigner / DesignerProvider: designer resolution, injected rather than discovered.
  - DocumentStore / DistributedLocker: persistence of design documents.
*/
package ports
