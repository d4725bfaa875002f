// Package embedjs delivers the browser bootstrap for the widget: a shared
// custom-element runtime, a declarative script-tag injector, and a
// programmatic mount/unmount global. The scripts are held as Go constants
// and served by the widget service, so host pages need no build step.
package embedjs

// runtimeScript registers the <liz-search-widget> custom element. Both
// bootstrap variants load it, so behavior is identical regardless of the
// injection path. The element owns a shadow root (the isolated rendering
// boundary), runs the style fallback chain once on connect, and drives the
// search session: idle until submit, loading while the request is in
// flight, then success or error. Stale responses for a closed or
// superseded session are discarded.
const runtimeScript = `(() => {
  if (window.customElements.get('liz-search-widget')) return;

  const WELL_KNOWN_CSS = ['/widget/widget.css', '/assets/widget.css', '/static/liz-widget.css'];
  const GENERIC_ERROR = 'Something went wrong while searching. Please try again.';

  function stars(r) {
    r = Math.max(0, Math.min(5, Number(r) || 0));
    const full = Math.floor(r);
    const half = r > full ? 1 : 0;
    return '★'.repeat(full) + '⯪'.repeat(half) + '☆'.repeat(5 - full - half);
  }

  function esc(s) {
    const div = document.createElement('div');
    div.textContent = String(s == null ? '' : s);
    return div.innerHTML;
  }

  // Minimal sanitizing renderer for the agent's markdown dialect:
  // paragraphs, emphasis, lists. Everything is escaped before markup is
  // reintroduced, so agent output cannot inject HTML.
  function renderMarkdown(src) {
    const lines = String(src || '').split('\n');
    const out = [];
    let list = [];
    const flush = () => {
      if (list.length) { out.push('<ul>' + list.join('') + '</ul>'); list = []; }
    };
    for (const raw of lines) {
      const line = raw.trim();
      if (!line) { flush(); continue; }
      const inline = esc(line)
        .replace(/\*\*([^*]+)\*\*/g, '<strong>$1</strong>')
        .replace(/\*([^*]+)\*/g, '<em>$1</em>');
      if (/^[-*] /.test(line)) {
        list.push('<li>' + inline.slice(2) + '</li>');
      } else {
        flush();
        out.push('<p>' + inline + '</p>');
      }
    }
    flush();
    return out.join('');
  }

  class LizSearchWidget extends HTMLElement {
    constructor() {
      super();
      this.session = 0;
      this.state = 'idle';
      this.result = null;
      this.open = false;
      this.styleDone = false;
    }

    get config() {
      const variant = this.getAttribute('variant');
      const theme = this.getAttribute('theme');
      return {
        variant: ['floating', 'minimal', 'default'].includes(variant) ? variant : 'default',
        theme: ['light', 'dark'].includes(theme) ? theme : 'light',
        apiUrl: (this.getAttribute('api-url') || '').replace(/\/+$/, '')
      };
    }

    connectedCallback() {
      this.root = this.attachShadow({ mode: 'open' });
      this.resolveStyles().catch(() => {}).then(() => this.render());
    }

    disconnectedCallback() {
      this.session++;
      this.open = false;
    }

    // Ordered fallback: inlined CSS (none in the served runtime; the
    // injector variant bakes it in), fetched built stylesheet, then
    // cloned host styles. Each step absorbs its own failure.
    async resolveStyles() {
      if (this.styleDone) return;
      this.styleDone = true;

      if (window.LIZ_WIDGET_CSS) {
        const style = document.createElement('style');
        style.textContent = window.LIZ_WIDGET_CSS;
        this.root.appendChild(style);
        return;
      }

      const base = this.config.apiUrl;
      for (const path of WELL_KNOWN_CSS) {
        try {
          const resp = await fetch(base + path);
          if (resp.ok) {
            const style = document.createElement('style');
            style.textContent = await resp.text();
            this.root.appendChild(style);
            return;
          }
        } catch (err) {
          console.warn('liz-widget: stylesheet fetch failed', path, err);
        }
      }

      try {
        let cloned = false;
        document.querySelectorAll('style').forEach((node) => {
          this.root.appendChild(node.cloneNode(true));
          cloned = true;
        });
        document.querySelectorAll('link[rel="stylesheet"]').forEach((node) => {
          const href = (node.getAttribute('href') || '').toLowerCase();
          if (href.includes('index') || href.includes('style') || href.includes('tailwind') || href.endsWith('.css')) {
            this.root.appendChild(node.cloneNode(true));
            cloned = true;
          }
        });
        if (cloned) return;
      } catch (err) {
        console.warn('liz-widget: cloning host styles failed', err);
      }

      console.warn('liz-widget: no styles resolved, rendering unstyled');
    }

    openOverlay() {
      if (this.open) return;
      this.open = true;
      this.session++;
      this.state = 'idle';
      this.result = null;
      this.render();
    }

    closeOverlay() {
      this.open = false;
      this.session++;
      this.state = 'idle';
      this.result = null;
      this.render();
    }

    async submit(query) {
      query = String(query || '').trim();
      if (!query || this.state === 'loading') return;

      const cfg = this.config;
      this.dispatchEvent(new CustomEvent('liz-search', {
        bubbles: true, composed: true,
        detail: { query: query, variant: cfg.variant }
      }));

      const session = ++this.session;
      this.state = 'loading';
      this.query = query;
      this.render();

      try {
        const ctl = new AbortController();
        const timer = setTimeout(() => ctl.abort(), 15000);
        const resp = await fetch(cfg.apiUrl + '/api/v1/letta/search', {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify({ query: query }),
          signal: ctl.signal
        });
        clearTimeout(timer);
        if (!resp.ok) throw new Error('status ' + resp.status);
        const body = await resp.json();
        if (session !== this.session || !this.open) return; // stale
        this.state = 'success';
        this.result = body;
      } catch (err) {
        console.warn('liz-widget: search failed', err);
        if (session !== this.session || !this.open) return;
        this.state = 'error';
        this.result = null;
      }
      this.render();
    }

    render() {
      if (!this.root) return;
      const cfg = this.config;
      const prev = this.root.querySelector('.liz-widget');
      if (prev) prev.remove();

      const wrap = document.createElement('div');
      wrap.className = 'liz-widget' + (cfg.theme === 'dark' ? ' liz-widget--dark' : '');

      const trigger = document.createElement('button');
      trigger.type = 'button';
      trigger.className = 'liz-trigger' +
        (cfg.variant === 'floating' ? ' liz-trigger--floating' :
         cfg.variant === 'minimal' ? ' liz-trigger--minimal' : '');
      trigger.textContent = cfg.variant === 'minimal' ? 'Search' : '✨ Beauty search';
      trigger.addEventListener('click', () => this.openOverlay());
      wrap.appendChild(trigger);

      if (this.open) wrap.appendChild(this.renderOverlay());
      this.root.appendChild(wrap);
    }

    renderOverlay() {
      const overlay = document.createElement('div');
      overlay.className = 'liz-overlay';
      overlay.addEventListener('click', (e) => { if (e.target === overlay) this.closeOverlay(); });

      const panel = document.createElement('div');
      panel.className = 'liz-panel';

      const form = document.createElement('form');
      form.className = 'liz-search-form';
      const input = document.createElement('input');
      input.className = 'liz-search-input';
      input.type = 'text';
      input.value = this.query || '';
      input.placeholder = 'Ask about skincare, makeup, routines…';
      const button = document.createElement('button');
      button.className = 'liz-search-submit';
      button.type = 'submit';
      button.textContent = 'Search';
      button.disabled = this.state === 'loading';
      form.appendChild(input);
      form.appendChild(button);
      form.addEventListener('submit', (e) => { e.preventDefault(); this.submit(input.value); });
      panel.appendChild(form);

      if (this.state === 'loading') {
        const div = document.createElement('div');
        div.className = 'liz-loading';
        div.textContent = 'Asking our AI beauty consultant…';
        panel.appendChild(div);
      } else if (this.state === 'error') {
        const div = document.createElement('div');
        div.className = 'liz-error';
        div.textContent = GENERIC_ERROR;
        panel.appendChild(div);
      } else if (this.state === 'success' && this.result) {
        const r = this.result;
        const explanation = document.createElement('div');
        explanation.className = 'liz-explanation';
        explanation.innerHTML = renderMarkdown(r.agent_response || r.explanation);
        panel.appendChild(explanation);

        if (Array.isArray(r.products) && r.products.length) {
          const carousel = document.createElement('div');
          carousel.className = 'liz-carousel';
          for (const p of r.products) { // backend order preserved
            const card = document.createElement('div');
            card.className = 'liz-product';
            card.innerHTML =
              (p.image_url ? '<img class="liz-product-image" src="' + esc(p.image_url) + '" alt="' + esc(p.name) + '">' : '') +
              '<div class="liz-product-name">' + esc(p.name) + '</div>' +
              '<div class="liz-product-brand">' + esc(p.brand) + '</div>' +
              '<div class="liz-product-price">' + esc(p.currency === 'USD' || !p.currency ? '$' + Number(p.price).toFixed(2) : Number(p.price).toFixed(2) + ' ' + p.currency) + '</div>' +
              '<div class="liz-product-rating">' + stars(p.rating) + ' (' + (p.review_count | 0) + ')</div>' +
              '<div class="liz-product-why">' + esc(p.why_recommended) + '</div>' +
              (p.learn_more_url ? '<a href="' + esc(p.learn_more_url) + '" target="_blank" rel="noopener">Learn more</a>' : '');
            carousel.appendChild(card);
          }
          panel.appendChild(carousel);
        }

        const cta = document.createElement('a');
        cta.className = 'liz-quiz-cta';
        cta.href = r.quiz_url || '/quiz';
        cta.textContent = r.quiz_cta || 'Want more precise recommendations? Do the quiz!';
        panel.appendChild(cta);
      }

      overlay.appendChild(panel);
      return overlay;
    }
  }

  window.customElements.define('liz-search-widget', LizSearchWidget);
})();
`

// injectScript is the declarative bootstrap: a script tag carrying data-*
// attributes mounts the widget once. A marker element id guards against a
// second inclusion of the same script.
const injectScript = `(() => {
  const script = document.currentScript;
  if (!script) return;
  const ds = script.dataset || {};
  const containerId = ds.containerId || 'liz-widget-root';

  if (document.getElementById(containerId)) {
    console.warn('liz-widget: container ' + containerId + ' already present, skipping');
    return;
  }

  const mount = () => {
    if (document.getElementById(containerId)) return;
    const container = document.createElement('div');
    container.id = containerId;
    const el = document.createElement('liz-search-widget');
    if (ds.variant) el.setAttribute('variant', ds.variant);
    if (ds.theme) el.setAttribute('theme', ds.theme);
    el.setAttribute('api-url', ds.apiUrl || new URL(script.src).origin);
    container.appendChild(el);
    document.body.appendChild(container);
  };

  if (document.readyState === 'loading') {
    document.addEventListener('DOMContentLoaded', mount, { once: true });
  } else {
    mount();
  }
})();
`

// embedScript is the programmatic bootstrap: it exposes a global
// LizWidget handle with mount(config) and unmount(containerId), usable
// multiple times per page with independent container ids.
const embedScript = `(() => {
  if (window.LizWidget) return;

  const mounted = new Map();

  window.LizWidget = {
    mount(config) {
      config = config || {};
      const containerId = config.containerId || 'liz-widget-root';
      if (mounted.has(containerId) || document.getElementById(containerId)) {
        console.warn('liz-widget: container ' + containerId + ' already mounted');
        return null;
      }
      const container = document.createElement('div');
      container.id = containerId;
      const el = document.createElement('liz-search-widget');
      if (config.variant) el.setAttribute('variant', config.variant);
      if (config.theme) el.setAttribute('theme', config.theme);
      el.setAttribute('api-url', config.apiUrl || '');
      container.appendChild(el);
      (config.parent ? document.querySelector(config.parent) : document.body).appendChild(container);
      mounted.set(containerId, container);
      return el;
    },

    unmount(containerId) {
      containerId = containerId || 'liz-widget-root';
      const container = mounted.get(containerId) || document.getElementById(containerId);
      if (container && container.parentNode) container.parentNode.removeChild(container);
      mounted.delete(containerId);
    }
  };
})();
`
