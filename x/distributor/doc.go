/*
Package distributor implements pooled deposit distribution.

One DistributeMsg aggregates contributions for many recipients, stages
the total in a custody account, deposits it into a vault in a single
operation and apportions the minted claim units back to each recipient
in exact proportion to their contribution. All but the last recipient
receive a floored pro-rata share, the last recipient absorbs the
rounding dust, so the claim units are conserved exactly.

Every transfer the distributor initiates on behalf of the custody
account is covered by a single-use grant issued immediately before the
transfer. The whole delivery is all-or-nothing: any validation,
arithmetic, authorization or ledger failure aborts it and the cache
wrapped store is discarded.
*/
package distributor
