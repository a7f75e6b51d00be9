/*
Package dispatch routes notifications to variant-specific senders.

The dispatch table decouples "what notifications exist" from "how each variant
is delivered": supporting a new channel means registering one more Sender, not
touching routing logic.

	table, err := dispatch.NewTable(
	    sender.NewSmsSender(logger),
	    sender.NewEmailSender(logger),
	)
	if err != nil {
	    // two senders declared the same variant, or an unknown variant
	    return err
	}

	err = table.Dispatch(ctx, dispatch.Campaign{Name: "Black Friday"}, batch)

The sender set is explicit by design: whatever assembly code sits at the top of
the process passes the complete list to NewTable, keeping this package free of
any injection framework.

The table is built once and read-only afterwards. As long as NewTable returns
before the table is shared, concurrent Dispatch calls need no locking.
*/
package dispatch
